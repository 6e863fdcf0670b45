package dto

type HookInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

// EventInput mirrors a timer effect. Times are Unix milliseconds.
type EventInput struct {
	Kind          string
	Phase         string
	PlannedEndMs  int64
	CompletedWork bool
	Reason        string
	AtMs          int64
}
