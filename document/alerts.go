package document

import (
	"github.com/google/uuid"
	"github.com/graphia-app/graphia-sub005/transform"
)

// DocumentAlert is one entry in the document's running alert history: a
// transform.Alert tagged with a stable id and the subsystem it came from,
// per §7's "attached to the Alert list of the nearest owning object
// (document, transform, adapter) and surfaced via an alertsChanged
// observer" — the document is that nearest owning object for anything
// that isn't scoped to a single in-flight pipeline run.
type DocumentAlert struct {
	ID      uuid.UUID
	Source  string
	Level   transform.Level
	Message string
}

const alertHistoryLimit = 256

// pushAlert appends a to the document's alert ring, trimming to
// alertHistoryLimit, and notifies observers.
func (d *Document) pushAlert(source string, a transform.Alert) {
	d.alerts = append(d.alerts, DocumentAlert{
		ID: uuid.New(), Source: source, Level: a.Level, Message: a.Message,
	})
	if len(d.alerts) > alertHistoryLimit {
		d.alerts = d.alerts[len(d.alerts)-alertHistoryLimit:]
	}
	d.notifyAlerts()
}

func (d *Document) notifyAlerts() {
	snapshot := d.Alerts()
	for _, fn := range d.onAlertsChanged {
		fn(snapshot)
	}
}

// Alerts returns a copy of the document's accumulated alert history, most
// recent last.
func (d *Document) Alerts() []DocumentAlert {
	out := make([]DocumentAlert, len(d.alerts))
	copy(out, d.alerts)
	return out
}

// OnAlertsChanged registers fn to be called after every alert the document
// records.
func (d *Document) OnAlertsChanged(fn func([]DocumentAlert)) {
	d.onAlertsChanged = append(d.onAlertsChanged, fn)
}

// ClearAlerts empties the alert history.
func (d *Document) ClearAlerts() {
	if len(d.alerts) == 0 {
		return
	}
	d.alerts = nil
	d.notifyAlerts()
}

// recordPipelineAlerts copies every alert from a pipeline run into the
// document's own history, tagged "transform".
func (d *Document) recordPipelineAlerts(alerts *transform.AlertList) {
	if alerts == nil {
		return
	}
	for _, a := range alerts.All() {
		d.pushAlert("transform", a)
	}
}
