package witness

// Generator participates in witness generation. Every generator exposes a
// stable id, the set of targets whose population should re-queue it, and a
// run operation that reads the current witness and appends writes to a
// freshly-provided buffer.
type Generator interface {
	// ID returns a stable textual identifier, constant across
	// serialize/deserialize round-trips for the same logical generator.
	ID() string

	// WatchList returns the targets whose population may enable this
	// generator to make progress. May be empty, for generators that
	// depend on nothing and must therefore retire on their first run.
	WatchList() []Target

	// Run reads from w, appends zero or more writes to buf, and reports
	// whether this generator should never run again. Run must not treat
	// an absent dependency as an error; it must return false instead, so
	// the runtime re-queues it once the dependency appears.
	Run(w *PartitionWitness, buf *GeneratedValues) (finished bool)

	// Serialize writes this generator's payload to dst. The id is not
	// part of the payload; the registry handles id framing.
	Serialize(dst *Buffer) error
}

// Deserializer reconstructs a Generator of one specific kind from its
// serialized payload. Registered against a generator id in a Registry.
type Deserializer func(src *Buffer) (Generator, error)

// SimpleGenerator is the common case: a one-shot generator with a declared
// dependency list. It fires exactly once, when all its dependencies are
// present, and then retires. Adapted via Adapt into a full Generator.
type SimpleGenerator interface {
	ID() string
	Dependencies() []Target
	RunOnce(w *PartitionWitness, buf *GeneratedValues)
	Serialize(dst *Buffer) error
}

// SimpleGeneratorAdapter wraps a SimpleGenerator as a full Generator:
// WatchList is the dependency list, and Run checks ContainsAll(dependencies)
// before invoking RunOnce.
type SimpleGeneratorAdapter struct {
	Inner SimpleGenerator
}

// Adapt wraps sg as a full Generator.
func Adapt(sg SimpleGenerator) Generator {
	return SimpleGeneratorAdapter{Inner: sg}
}

// ID delegates to the wrapped SimpleGenerator.
func (a SimpleGeneratorAdapter) ID() string { return a.Inner.ID() }

// WatchList returns the wrapped SimpleGenerator's dependency list.
func (a SimpleGeneratorAdapter) WatchList() []Target { return a.Inner.Dependencies() }

// Run checks that every dependency is present before calling RunOnce.
// SimpleGenerator-backed generators always retire on the run that actually
// executes RunOnce; there is no notion of a SimpleGenerator running twice.
func (a SimpleGeneratorAdapter) Run(w *PartitionWitness, buf *GeneratedValues) bool {
	if !w.ContainsAll(a.Inner.Dependencies()) {
		return false
	}
	a.Inner.RunOnce(w, buf)
	return true
}

// Serialize delegates to the wrapped SimpleGenerator.
func (a SimpleGeneratorAdapter) Serialize(dst *Buffer) error {
	return a.Inner.Serialize(dst)
}
