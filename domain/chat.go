// Package domain contains the core concepts shared by the rpc-lab clients
// and servers. Values here are immutable once built.
package domain

import "strings"

// DefaultQueueCapacity bounds the outbound chat queue. A fast typist is
// slowed down by backpressure once that many messages are pending.
const DefaultQueueCapacity = 32

// ChatMessage is a single chat line tagged with its sender identity.
// The same shape travels in both directions of a chat stream.
type ChatMessage struct {
	Sender  string
	Payload string
}

// NewChatMessage builds the outbound message for a console line.
// It reports false when the line is blank once trimmed: such lines are never sent.
// Bytes that are not valid UTF-8 are replaced with U+FFFD, as the wire only
// carries UTF-8 text.
func NewChatMessage(sender, line string) (ChatMessage, bool) {
	payload := strings.TrimSpace(strings.ToValidUTF8(line, "\uFFFD"))
	if payload == "" {
		return ChatMessage{}, false
	}
	return ChatMessage{Sender: sender, Payload: payload}, true
}
