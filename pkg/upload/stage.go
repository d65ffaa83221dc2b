package upload

import "fmt"

// Stage is a state of the upload pipeline. Stages are passed in declaration order.
type Stage uint8

const (
	StageReceived Stage = iota
	StageRateChecked
	StageSanitized
	StageSizeChecked
	StageDangerChecked
	StageExtensionChecked
	StageContentRead
	StageContentVerified
	StageArchiveChecked
	StageStored
)

var stageNames = [...]string{
	StageReceived:         "Received",
	StageRateChecked:      "RateChecked",
	StageSanitized:        "Sanitized",
	StageSizeChecked:      "SizeChecked",
	StageDangerChecked:    "DangerChecked",
	StageExtensionChecked: "ExtensionChecked",
	StageContentRead:      "ContentRead",
	StageContentVerified:  "ContentVerified",
	StageArchiveChecked:   "ArchiveChecked",
	StageStored:           "Stored",
}

var _ [len(stageNames) - int(StageStored) - 1]struct{}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}
