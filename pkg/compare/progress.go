package compare

import "time"

const (
	progressReportInterval = 50 * time.Millisecond
	progressReportBytes    = 64 * 1024
)

// progressTracker throttles calls to a ProgressFunc. A nil tracker does nothing.
type progressTracker struct {
	report       ProgressFunc
	path         string
	total        int64
	lastReported int64
	lastTime     time.Time
}

func newProgressTracker(report ProgressFunc, path string, total int64) *progressTracker {
	if report == nil {
		return nil
	}
	return &progressTracker{report: report, path: path, total: total, lastTime: time.Now()}
}

func (p *progressTracker) update(current int64) {
	if p == nil {
		return
	}
	if current-p.lastReported >= progressReportBytes || time.Since(p.lastTime) >= progressReportInterval {
		p.emit(current)
	}
}

// finish reports the final count if it was not reported yet
func (p *progressTracker) finish(current int64) {
	if p == nil || current <= p.lastReported {
		return
	}
	p.emit(current)
}

func (p *progressTracker) emit(current int64) {
	p.report(p.path, current, p.total)
	p.lastReported = current
	p.lastTime = time.Now()
}
