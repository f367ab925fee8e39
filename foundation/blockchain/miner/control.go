package miner

// signalKind tags the three control signals the single-producer/
// single-consumer control channel carries.
type signalKind int

const (
	signalStart signalKind = iota
	signalPause
	signalExit
)

// controlSignal is the tagged variant sent over the control channel:
// Start(lambda), Paused, or Exit.
type controlSignal struct {
	kind   signalKind
	lambda uint64
}

// stateKind tags the miner's operating state.
type stateKind int

const (
	statePaused stateKind = iota
	stateRun
	stateShutDown
)

// operatingState is the miner's current state: Paused (initial),
// Run(lambda), or ShutDown (terminal).
type operatingState struct {
	kind   stateKind
	lambda uint64
}

// apply transitions the operating state in response to a control signal.
func (s operatingState) apply(sig controlSignal) operatingState {
	switch sig.kind {
	case signalExit:
		return operatingState{kind: stateShutDown}
	case signalStart:
		return operatingState{kind: stateRun, lambda: sig.lambda}
	case signalPause:
		return operatingState{kind: statePaused}
	default:
		return s
	}
}
