package chat

import "rpc-lab/domain"

// Forward hands every queued message to send until the producer closes the
// queue. When send fails the queue is dropped so the producer stops at its
// next enqueue, and the failure is returned.
func Forward(queue *Queue, send func(domain.ChatMessage) error) error {
	for msg := range queue.Receive() {
		if err := send(msg); err != nil {
			queue.Drop()
			return err
		}
	}
	return nil
}
