package mailer

import "github.com/sirupsen/logrus"

type Message struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher decouples mail delivery from the request path. Enqueueing
// never blocks; a full queue drops the message. Delivery failures are
// logged and discarded, they never reach the caller of the write that
// triggered them.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.sender.Send(msg.To, msg.Subject, msg.Body); err != nil {
			logrus.WithError(err).WithField("to", msg.To).
				Warn("failed to send notification mail")
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
		// enqueued
	default:
		logrus.WithField("to", msg.To).Warn("mail queue full, dropping message")
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
