package session

// Metrics is the seam the driver calls into opportunistically (spec
// §1/§4.5's "interfaces are specified only where the core calls into
// them"). A nil Metrics is always safe to call through noopMetrics.
type Metrics interface {
	ObserveSent(commandID uint32)
	ObserveReceived(commandID uint32)
	SetPendingCount(n int)
	ObserveKeepAliveLoss()
}

type noopMetrics struct{}

func (noopMetrics) ObserveSent(uint32)     {}
func (noopMetrics) ObserveReceived(uint32) {}
func (noopMetrics) SetPendingCount(int)    {}
func (noopMetrics) ObserveKeepAliveLoss()  {}
