package access

import (
	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Gate wires the whole subsystem for an embedding application: store, hasher,
// codec, credential service, policy registry, and decision engine, all built
// from one Config and one injected database handle.
type Gate struct {
	Users    *UsersRepository
	Hasher   *Hasher
	Codec    *TokenCodec
	Service  *Service
	Policies *PolicyRegistry
	Engine   *Engine
	Foreign  *ForeignTokenAdapter
}

// GateOption customizes gate assembly.
type GateOption func(*gateOptions)

type gateOptions struct {
	logger Logger
}

// WithGateLogger injects the application logger into every component.
func WithGateLogger(logger Logger) GateOption {
	return func(o *gateOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewGate validates the config and assembles the subsystem. The db lifecycle
// stays with the caller: open before NewGate, close at shutdown.
func NewGate(cfg Config, db *bun.DB, opts ...GateOption) (*Gate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid access configuration")
	}

	options := &gateOptions{logger: defLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	logger := options.logger

	g := &Gate{
		Policies: NewPolicyRegistry(),
	}

	g.Users = NewUsersRepository(db)
	g.Hasher = NewHasher(cfg.BcryptCost, cfg.MaxConcurrentHashes)
	g.Codec = NewTokenCodec([]byte(cfg.SigningSecret), cfg.TokenTTL, cfg.Issuer, logger)
	g.Service = NewService(g.Users, g.Hasher, g.Codec).WithLogger(logger)
	g.Foreign = NewForeignTokenAdapter(g.Codec, g.Users).WithLogger(logger)
	g.Engine = NewEngine(g.Codec).
		WithForeignResolver(g.Foreign).
		WithLogger(logger)

	return g, nil
}
