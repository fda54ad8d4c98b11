package formula

import (
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formulafmt/internal/condense"
	"github.com/gnoswap-labs/formulafmt/internal/highlight"
	"github.com/gnoswap-labs/formulafmt/internal/lexer"
	"github.com/gnoswap-labs/formulafmt/internal/pretty"
)

// DefaultCacheSize is the memo capacity used when none is configured.
const DefaultCacheSize = condense.DefaultCacheSize

// Cache memoizes condensed formulas. It is bounded and evicts the least
// recently used entry.
type Cache = condense.Cache

// NewCache returns a Cache holding at most size formulas.
func NewCache(size int) (*Cache, error) {
	return condense.NewCache(size)
}

// Service renders formulas with an owned memo cache, theme and logger. A
// Service is safe for concurrent use.
type Service struct {
	cache     *Cache
	condenser *condense.Condenser
	theme     highlight.Theme
	logger    *zap.Logger
}

type Option func(*Service) error

// WithCache makes the service memoize through cache, which may be shared
// between services.
func WithCache(cache *Cache) Option {
	return func(s *Service) error {
		s.cache = cache
		return nil
	}
}

// WithCacheSize gives the service its own cache of the given size.
func WithCacheSize(size int) Option {
	return func(s *Service) error {
		cache, err := condense.NewCache(size)
		if err != nil {
			return err
		}
		s.cache = cache
		return nil
	}
}

// WithTheme sets the highlight colors. Empty entries take the default.
func WithTheme(theme Theme) Option {
	return func(s *Service) error {
		theme = theme.WithDefaults()
		if err := theme.Validate(); err != nil {
			return err
		}
		s.theme = theme
		return nil
	}
}

// WithLogger sets where fallbacks are reported, at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// New returns a Service. Without options it does not memoize, uses the
// default theme and logs nothing.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		theme:  DefaultTheme(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.condenser = condense.New(s.cache)
	return s, nil
}

// Cache returns the memo cache, or nil when the service does not memoize.
func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) Theme() Theme {
	return s.theme
}

func (s *Service) Tokenize(formula string) []Token {
	return lexer.Tokenize(formula)
}

func (s *Service) Condense(formula string) string {
	return s.condenser.Condense(formula)
}

// TryFormat is Format without the fallback: it reports why a formula could
// not be laid out.
func (s *Service) TryFormat(formula string) (string, error) {
	return pretty.Format(formula)
}

func (s *Service) Format(formula string) string {
	out, err := s.TryFormat(formula)
	if err != nil {
		s.logger.Debug("formula fallback", zap.String("op", "format"), zap.Error(err))
		return formula
	}
	return out
}

// TryHighlight is Highlight without the fallback.
func (s *Service) TryHighlight(formula string) (string, error) {
	if formula == "" {
		return "", nil
	}
	return highlight.HTML(lexer.Tokenize(formula), s.theme)
}

func (s *Service) Highlight(formula string) string {
	out, err := s.TryHighlight(formula)
	if err != nil {
		s.logger.Debug("formula fallback", zap.String("op", "highlight"), zap.Error(err))
		return highlight.Escape(formula)
	}
	return out
}

// Terminal returns the formula colored for a terminal using the service
// theme. With color disabled the formula comes back as written.
func (s *Service) Terminal(formula string, enabled bool) string {
	term, err := highlight.NewTerminal(s.theme, enabled)
	if err != nil {
		s.logger.Debug("formula fallback", zap.String("op", "terminal"), zap.Error(err))
		return formula
	}
	out, err := term.Render(lexer.Tokenize(formula))
	if err != nil {
		s.logger.Debug("formula fallback", zap.String("op", "terminal"), zap.Error(err))
		return formula
	}
	return out
}

func (s *Service) FieldRefs(formula string) []string {
	return FieldRefs(formula)
}

func (s *Service) Functions(formula string) []string {
	return Functions(formula)
}
