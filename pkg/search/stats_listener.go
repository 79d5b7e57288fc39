package search

// Listener function callback, receives the current search statistics
type ListenerFunc func(Result)

type StatsListener struct {
	// called after every root column is searched, with the best result so far
	onRootMove ListenerFunc

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

// Attach a callback called once per searched root column
func (listener *StatsListener) OnRootMove(onRootMove ListenerFunc) *StatsListener {
	listener.onRootMove = onRootMove
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the result
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invoke(f ListenerFunc, result Result) {
	if f != nil {
		f(result)
	}
}
