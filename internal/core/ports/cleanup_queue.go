package ports

// CleanupQueue accepts stored-image URLs whose synchronous removal failed so
// a background worker can retry them. Enqueue never blocks the caller beyond
// the queue buffer.
type CleanupQueue interface {
	Enqueue(url string)
}
