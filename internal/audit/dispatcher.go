package audit

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Event struct {
	UserID   *uuid.UUID
	ClientID *uuid.UUID
	Action   string
	Details  string
}

// Recorder permite capturar eventos en tests sin base de datos.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.ClientID,
			ev.Action,
			ev.Details,
		); err != nil {
			logrus.WithError(err).Warn("activity log write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila llena → descartamos el evento (nunca romper la API)
		logrus.Warn("activity log queue full, dropping event")
	}
}
