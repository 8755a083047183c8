package logfields

import "go.uber.org/zap"

func Event(val string) zap.Field {
	return zap.String("event", val)
}

func WorkflowVersion(val string) zap.Field {
	return zap.String("workflow.version", val)
}

func ConfigProfile(val string) zap.Field {
	return zap.String("workflow.config_profile", val)
}
