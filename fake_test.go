package ffx

import (
	"errors"
	"log/slog"

	"github.com/gogpu/ffx/backend"
)

type fakeDesc struct{ t DescType }

func (d *fakeDesc) Type() DescType { return d.t }

type fakeState struct {
	owner      Provider
	env        *Env
	dispatched []DescType
	configured int
}

func (s *fakeState) Owner() Provider { return s.owner }

// fakeProvider records calls and can be told to fail.
type fakeProvider struct {
	id      uint64
	version string
	types   []DescType

	createErr  error
	destroyErr error
	foreign    Provider // CreateContext tags state with this provider when set

	destroyed int
	queries   []State
}

func newFake(id uint64, version string, types ...DescType) *fakeProvider {
	return &fakeProvider{id: id, version: version, types: types}
}

func (p *fakeProvider) ID() uint64      { return p.id }
func (p *fakeProvider) Version() string { return p.version }

func (p *fakeProvider) CanProvide(t DescType) bool {
	for _, x := range p.types {
		if x == t {
			return true
		}
	}
	return false
}

func (p *fakeProvider) CreateContext(_ Descriptor, env *Env) (State, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	owner := Provider(p)
	if p.foreign != nil {
		owner = p.foreign
	}
	return &fakeState{owner: owner, env: env}, nil
}

func (p *fakeProvider) DestroyContext(State) error {
	p.destroyed++
	return p.destroyErr
}

func (p *fakeProvider) Configure(s State, _ Descriptor) error {
	s.(*fakeState).configured++
	return nil
}

func (p *fakeProvider) Query(s State, _ Descriptor) error {
	p.queries = append(p.queries, s)
	return nil
}

func (p *fakeProvider) Dispatch(s State, desc Descriptor) error {
	if !p.CanProvide(desc.Type()) {
		return ErrUnsupportedDescriptor
	}
	st := s.(*fakeState)
	st.dispatched = append(st.dispatched, desc.Type())
	return nil
}

var errCreate = errors.New("create failed")

// trackingBackend counts Close calls and captures the propagated logger.
// A non-nil initErr makes Init fail.
type trackingBackend struct {
	*backend.HeadlessBackend
	closed  int
	logger  *slog.Logger
	initErr error
}

func (b *trackingBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	return b.HeadlessBackend.Init()
}

func newTrackingBackend() *trackingBackend {
	return &trackingBackend{HeadlessBackend: backend.NewHeadlessBackend()}
}

func (b *trackingBackend) Close() {
	b.closed++
	b.HeadlessBackend.Close()
}

func (b *trackingBackend) SetLogger(l *slog.Logger) {
	b.logger = l
}
