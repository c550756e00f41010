package services

// ChatSessionHeader is the response header announcing an accepted chat session.
// Its value is the session id chosen by the server.
const ChatSessionHeader = "x-chat-session-id"
