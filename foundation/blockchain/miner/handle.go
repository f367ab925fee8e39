package miner

// Handle lets callers drive a running miner's control plane: start
// continuous mining with a given inter-burst delay, pause it, or shut it
// down for good. It is safe to call from any goroutine.
type Handle struct {
	controlChan chan<- controlSignal
}

// Start sends Start(lambdaMicros), moving the miner into Run mode. A
// lambdaMicros of zero means no delay between mining bursts.
func (h Handle) Start(lambdaMicros uint64) {
	h.controlChan <- controlSignal{kind: signalStart, lambda: lambdaMicros}
}

// Pause sends Paused, moving the miner back to its initial, idle state.
func (h Handle) Pause() {
	h.controlChan <- controlSignal{kind: signalPause}
}

// Exit sends Exit, driving the miner to ShutDown before its next burst.
// In-progress bursts run to completion of their MiningStep budget, so
// shutdown latency is bounded.
func (h Handle) Exit() {
	h.controlChan <- controlSignal{kind: signalExit}
}
