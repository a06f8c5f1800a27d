package compute

import "github.com/san-kum/quasar/internal/quasar"

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend {
	return &SerialBackend{}
}

func (s *SerialBackend) Name() string    { return "serial" }
func (s *SerialBackend) Available() bool { return true }
func (s *SerialBackend) Cleanup()        {}

func (s *SerialBackend) Step(buf *quasar.Buffer, p quasar.StepParams) {
	quasar.Step(buf, p)
}
