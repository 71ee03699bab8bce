package gobblet

import (
	"github.com/icco/gutil/logging"
)

const (
	// GCPProject is the project this runs in.
	GCPProject = "gobblet-cloud"

	// Service is the name of this service.
	Service = "gobblet"
)

var (
	log = logging.Must(logging.NewLogger(Service))
)
