package worker

import (
	"github.com/spec-kit/au-connect/internal/service"
)

// StartActivityWorker subscribes the activity feed to ledger and coordinator events.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
