package analysis

import (
	"context"
	"time"
)

// Transcriber turns a recorded consultation into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// ImageAnalyzer describes a clinical image as text.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (string, error)
}

const (
	stubTranscript = "Patient presents with persistent cough for 5 days, fever of 101.5 degrees, " +
		"shortness of breath, and chest discomfort. Reports difficulty sleeping due to coughing. " +
		"No known allergies. Physical exam shows wheezing on auscultation. " +
		"Suspect acute bronchitis with possible asthma component."

	stubImageFinding = "Image analysis suggests: Skin lesion consistent with moderate acne vulgaris. " +
		"Multiple comedones and papules visible on facial region. " +
		"No signs of cystic acne or severe inflammation. Recommend topical treatment."
)

// StubTranscriber returns a fixed transcript regardless of input.
type StubTranscriber struct {
	Delay time.Duration
}

func (s StubTranscriber) Transcribe(ctx context.Context, _ string) (string, error) {
	if err := sleep(ctx, s.Delay); err != nil {
		return "", err
	}
	return stubTranscript, nil
}

// StubImageAnalyzer returns a fixed finding regardless of input.
type StubImageAnalyzer struct {
	Delay time.Duration
}

func (s StubImageAnalyzer) Analyze(ctx context.Context, _ string) (string, error) {
	if err := sleep(ctx, s.Delay); err != nil {
		return "", err
	}
	return stubImageFinding, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
