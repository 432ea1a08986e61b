package source

import "fmt"

type AcquisitionKind string

const (
	KindUnsupported         AcquisitionKind = "unsupported source"
	KindDownloadFailed      AcquisitionKind = "download failed"
	KindTranscriptionFailed AcquisitionKind = "transcription failed"
)

// AcquisitionError reports which stage of transcript acquisition failed.
type AcquisitionError struct {
	Kind AcquisitionKind
	Err  error
}

func (e *AcquisitionError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }
