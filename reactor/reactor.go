// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Poll-mode reactor owning every registered raw socket. The loop rebuilds
// its poll set each cycle because interest depends on queue state: a socket
// is polled for input only while its delivery channel has room (so the
// engine's receive high-water mark backpressures the peer instead of the
// wrapper buffering without bound), and for output only while sends are
// queued behind the engine's send high-water mark.

package reactor

import (
	"sync"

	"github.com/eapache/queue"
	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/internal/affinity"
)

// Direction declares which halves of a socket pattern are usable.
type Direction int

const (
	DirSend Direction = 1 << iota
	DirRecv

	DirBoth = DirSend | DirRecv
)

type opKind int

const (
	opRegister opKind = iota
	opSend
	opExec
	opClose
)

type command struct {
	op   opKind
	id   int
	st   *sockState              // identity check: slot ids are reused
	e    *entry                  // opRegister
	msg  api.Message             // opSend
	fn   func(*zmq.Socket) error // opExec
	done chan error              // buffered, always capacity 1
}

// sendReq is one queued outbound message with its waiter.
type sendReq struct {
	msg  api.Message
	done chan error
}

// sockState is the part of a registration shared with its Handle. err is
// written by the polling goroutine before recvC is closed, so readers that
// observe the closed channel see it.
type sockState struct {
	id    int
	recvC chan api.Message
	err   error
}

func (s *sockState) closeReason() error {
	if s.err != nil {
		return s.err
	}
	return api.ErrSocketClosed
}

// entry is the polling goroutine's view of one registered socket.
type entry struct {
	sock    *zmq.Socket
	st      *sockState
	sendQ   *queue.Queue // of *sendReq
	canSend bool
	canRecv bool
	name    string // socket type label for logs
}

// Reactor drives all sockets of one Context from a single goroutine.
type Reactor struct {
	zctx *zmq.Context
	cfg  Config

	cmds  chan command
	stopC chan struct{}
	doneC chan struct{}

	stopOnce sync.Once

	// wakeSend is shared by every producer to interrupt a blocked poll;
	// the mutex provides the synchronized access the engine requires.
	wakeMu   sync.Mutex
	wakeSend *zmq.Socket

	// State below is owned by the polling goroutine.
	wakeRecv *zmq.Socket
	tbl      table
	bySock   map[*zmq.Socket]*entry
}

// newReactor wires the wake PAIR over a unique inproc endpoint and starts
// the polling goroutine.
func newReactor(zctx *zmq.Context, cfg Config, wakeEndpoint string) (*Reactor, error) {
	cfg.normalize()

	wakeRecv, err := zctx.NewSocket(zmq.PAIR)
	if err != nil {
		return nil, api.NewError(api.ErrCodeEngine, "reactor wake", err)
	}
	_ = wakeRecv.SetLinger(0)
	if err := wakeRecv.Bind(wakeEndpoint); err != nil {
		wakeRecv.Close()
		return nil, api.NewError(api.ErrCodeEngine, "reactor wake bind", err)
	}

	wakeSend, err := zctx.NewSocket(zmq.PAIR)
	if err != nil {
		wakeRecv.Close()
		return nil, api.NewError(api.ErrCodeEngine, "reactor wake", err)
	}
	_ = wakeSend.SetLinger(0)
	if err := wakeSend.Connect(wakeEndpoint); err != nil {
		wakeSend.Close()
		wakeRecv.Close()
		return nil, api.NewError(api.ErrCodeEngine, "reactor wake connect", err)
	}

	r := &Reactor{
		zctx:     zctx,
		cfg:      cfg,
		cmds:     make(chan command, cfg.CommandBacklog),
		stopC:    make(chan struct{}),
		doneC:    make(chan struct{}),
		wakeSend: wakeSend,
		wakeRecv: wakeRecv,
		bySock:   make(map[*zmq.Socket]*entry),
	}

	go r.run()

	r.cfg.Logger.Debug().Str("wake", wakeEndpoint).Msg("reactor started")
	return r, nil
}

// Register hands sock over to the polling goroutine. The caller must not
// touch sock afterwards except through the returned Handle.
func (r *Reactor) Register(sock *zmq.Socket, dir Direction, name string) (*Handle, error) {
	st := &sockState{recvC: make(chan api.Message, r.cfg.ChannelSize)}
	e := &entry{
		sock:    sock,
		st:      st,
		sendQ:   queue.New(),
		canSend: dir&DirSend != 0,
		canRecv: dir&DirRecv != 0,
		name:    name,
	}
	if err := r.submit(command{op: opRegister, e: e, done: make(chan error, 1)}); err != nil {
		return nil, err
	}
	return &Handle{r: r, st: st, canSend: e.canSend, canRecv: e.canRecv}, nil
}

// Stop terminates the polling goroutine, failing all waiters, and blocks
// until it exited. Safe to call more than once.
func (r *Reactor) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopC)
		r.kick()
	})
	<-r.doneC
}

// submit queues cmd, wakes the poller, and waits for the reply.
func (r *Reactor) submit(cmd command) error {
	select {
	case r.cmds <- cmd:
	case <-r.doneC:
		return api.ErrReactorStopped
	}
	r.kick()
	select {
	case err := <-cmd.done:
		return err
	case <-r.doneC:
		return api.ErrReactorStopped
	}
}

var wakeByte = []byte{0}

// kick interrupts a blocked poll so queued commands get picked up.
func (r *Reactor) kick() {
	r.wakeMu.Lock()
	defer r.wakeMu.Unlock()
	if r.wakeSend == nil {
		return
	}
	// A full wake pipe already guarantees a pending wakeup.
	_, _ = r.wakeSend.SendBytes(wakeByte, zmq.DONTWAIT)
}

func (r *Reactor) run() {
	defer close(r.doneC)

	if r.cfg.PinPolling {
		if undo, err := affinity.PinCurrentThread(r.cfg.PollCPU); err != nil {
			r.cfg.Logger.Warn().Err(err).Int("cpu", r.cfg.PollCPU).Msg("poll thread pinning failed")
		} else {
			defer undo()
		}
	}

	for {
		r.drainCommands()

		select {
		case <-r.stopC:
			r.shutdown()
			return
		default:
		}

		poller := zmq.NewPoller()
		poller.Add(r.wakeRecv, zmq.POLLIN)
		r.tbl.each(func(e *entry) {
			var mask zmq.State
			if e.canRecv && len(e.st.recvC) < cap(e.st.recvC) {
				mask |= zmq.POLLIN
			}
			if e.sendQ.Length() > 0 {
				mask |= zmq.POLLOUT
			}
			if mask != 0 {
				poller.Add(e.sock, mask)
			}
		})

		polled, err := poller.Poll(r.cfg.PollInterval)
		r.cfg.Metrics.PollCycles.Inc()
		if err != nil {
			if isEINTR(err) {
				continue
			}
			r.cfg.Logger.Error().Err(err).Msg("poll failed, stopping reactor")
			r.shutdown()
			return
		}

		for _, p := range polled {
			if p.Socket == r.wakeRecv {
				r.drainWake()
				continue
			}
			e := r.bySock[p.Socket]
			if e == nil {
				continue
			}
			if p.Events&zmq.POLLOUT != 0 {
				r.flushSends(e)
			}
			if p.Events&zmq.POLLIN != 0 {
				r.drainRecv(e)
			}
		}
	}
}

func (r *Reactor) drainCommands() {
	for {
		select {
		case cmd := <-r.cmds:
			r.apply(cmd)
		default:
			return
		}
	}
}

func (r *Reactor) drainWake() {
	for {
		if _, err := r.wakeRecv.RecvBytes(zmq.DONTWAIT); err != nil {
			return
		}
	}
}

func (r *Reactor) apply(cmd command) {
	r.cfg.Metrics.Commands.Inc()

	switch cmd.op {
	case opRegister:
		cmd.e.st.id = r.tbl.add(cmd.e)
		r.bySock[cmd.e.sock] = cmd.e
		r.cfg.Metrics.SocketsActive.Set(float64(r.tbl.count))
		r.cfg.Logger.Debug().Str("socket", cmd.e.name).Int("id", cmd.e.st.id).Msg("socket registered")
		cmd.done <- nil

	case opSend:
		e := r.lookup(cmd)
		if e == nil {
			cmd.done <- api.ErrSocketClosed
			return
		}
		if e.sendQ.Length() == 0 {
			sent, err := r.trySend(e, cmd.msg)
			if err != nil {
				cmd.done <- err
				return
			}
			if sent {
				cmd.done <- nil
				return
			}
			r.cfg.Metrics.SendsBlocked.Inc()
		}
		e.sendQ.Add(&sendReq{msg: cmd.msg, done: cmd.done})
		r.cfg.Metrics.SendQueueDepth.Inc()

	case opExec:
		e := r.lookup(cmd)
		if e == nil {
			cmd.done <- api.ErrSocketClosed
			return
		}
		cmd.done <- cmd.fn(e.sock)

	case opClose:
		e := r.lookup(cmd)
		if e == nil {
			cmd.done <- nil
			return
		}
		r.tbl.remove(cmd.id)
		r.teardown(e, nil)
		cmd.done <- nil
	}
}

// lookup resolves a command's target. Slot ids are reused after a close,
// so a slot that changed hands since the command was issued is treated as
// gone rather than hitting the slot's new occupant.
func (r *Reactor) lookup(cmd command) *entry {
	e := r.tbl.get(cmd.id)
	if e == nil || e.st != cmd.st {
		return nil
	}
	return e
}

// trySend hands msg to the engine without blocking. A false result means
// the engine's send high-water mark is reached and the caller must wait
// for POLLOUT.
func (r *Reactor) trySend(e *entry, msg api.Message) (bool, error) {
	if _, err := e.sock.SendMessageDontwait([][]byte(msg)); err != nil {
		if isEAGAIN(err) {
			return false, nil
		}
		return false, api.NewError(codeFor(err), "send", err)
	}
	r.cfg.Metrics.MessagesSent.Inc()
	return true, nil
}

func (r *Reactor) flushSends(e *entry) {
	for e.sendQ.Length() > 0 {
		req := e.sendQ.Peek().(*sendReq)
		sent, err := r.trySend(e, req.msg)
		if err != nil {
			e.sendQ.Remove()
			r.cfg.Metrics.SendQueueDepth.Dec()
			req.done <- err
			continue
		}
		if !sent {
			return
		}
		e.sendQ.Remove()
		r.cfg.Metrics.SendQueueDepth.Dec()
		req.done <- nil
	}
}

func (r *Reactor) drainRecv(e *entry) {
	for len(e.st.recvC) < cap(e.st.recvC) {
		frames, err := e.sock.RecvMessageBytes(zmq.DONTWAIT)
		if err != nil {
			// EAGAIN means the engine queue is empty. REQ/REP sockets
			// return EFSM once a message is in and it is the send half's
			// turn; both just end this drain.
			if isEAGAIN(err) || isEFSM(err) {
				return
			}
			r.cfg.Logger.Warn().Err(err).Str("socket", e.name).Msg("receive failed, closing socket")
			r.tbl.remove(e.st.id)
			r.teardown(e, api.NewError(codeFor(err), "recv", err))
			return
		}
		e.st.recvC <- api.Message(frames)
		r.cfg.Metrics.MessagesReceived.Inc()
	}
}

// teardown fails queued senders, publishes the close reason, closes the
// delivery channel and the raw socket. reason nil means a plain Close.
func (r *Reactor) teardown(e *entry, reason error) {
	failWith := reason
	if failWith == nil {
		failWith = api.ErrSocketClosed
	}
	for e.sendQ.Length() > 0 {
		req := e.sendQ.Remove().(*sendReq)
		r.cfg.Metrics.SendQueueDepth.Dec()
		req.done <- failWith
	}
	e.st.err = reason
	close(e.st.recvC)
	delete(r.bySock, e.sock)
	if err := e.sock.Close(); err != nil {
		r.cfg.Logger.Warn().Err(err).Str("socket", e.name).Msg("raw socket close failed")
	}
	r.cfg.Metrics.SocketsActive.Set(float64(r.tbl.count))
}

// shutdown runs on the polling goroutine when Stop was requested or the
// poll failed fatally.
func (r *Reactor) shutdown() {
	for {
		select {
		case cmd := <-r.cmds:
			cmd.done <- api.ErrReactorStopped
			continue
		default:
		}
		break
	}

	r.tbl.each(func(e *entry) {
		r.teardown(e, api.ErrReactorStopped)
	})
	r.tbl = table{}

	r.wakeMu.Lock()
	r.wakeSend.Close()
	r.wakeSend = nil
	r.wakeMu.Unlock()
	r.wakeRecv.Close()

	r.cfg.Logger.Debug().Msg("reactor stopped")
}
