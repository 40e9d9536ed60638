package sequencer

import "sync"

// lifecycle encapsulates the shutdown sequence for a Sequencer. It is a
// wiring helper: it owns nothing and orchestrates freezing, cancellation, and
// waits in a deterministic order.
//
// shutdown is safe for concurrent calls; the sequence executes exactly once:
//  1. freeze state so no flush step can run afterwards
//  2. cancel the internal context, stopping the launcher and cancellable work
//  3. wait for the launcher to stop spawning operations
//  4. wait for in-flight operations to return
type lifecycle struct {
	freeze     func()
	cancel     func()
	launcherWG *sync.WaitGroup
	inflight   *sync.WaitGroup

	once sync.Once
}

func newLifecycle(freeze, cancel func(), launcherWG, inflight *sync.WaitGroup) *lifecycle {
	return &lifecycle{freeze: freeze, cancel: cancel, launcherWG: launcherWG, inflight: inflight}
}

func (lc *lifecycle) shutdown() {
	lc.once.Do(func() {
		if lc.freeze != nil {
			lc.freeze()
		}
		if lc.cancel != nil {
			lc.cancel()
		}
		if lc.launcherWG != nil {
			lc.launcherWG.Wait()
		}
		if lc.inflight != nil {
			lc.inflight.Wait()
		}
	})
}
