package access

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// DefaultContextKey is where the middleware stores the principal claims in
// fiber locals.
const DefaultContextKey = "access_claims"

// BearerFromHeader extracts the raw token from an Authorization header value.
// Anything that is not a bearer credential yields the empty string.
func BearerFromHeader(header string) string {
	const scheme = "bearer "
	if len(header) <= len(scheme) {
		return ""
	}
	if !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

// RouteGuard is the fiber boundary of the decision engine: it extracts the
// bearer credential, looks up the route's policy, and turns the Decision into
// a response or a pass-through with the principal attached.
type RouteGuard struct {
	engine     *Engine
	policies   *PolicyRegistry
	contextKey string
	logger     Logger
}

func NewRouteGuard(engine *Engine, policies *PolicyRegistry) *RouteGuard {
	return &RouteGuard{
		engine:     engine,
		policies:   policies,
		contextKey: DefaultContextKey,
		logger:     defLogger{},
	}
}

func (g *RouteGuard) WithContextKey(key string) *RouteGuard {
	if key != "" {
		g.contextKey = key
	}
	return g
}

func (g *RouteGuard) WithLogger(logger Logger) *RouteGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// RequireAccess guards a route registered under routeID. Denials map to 401
// for unauthenticated callers and 403 for role mismatches; an allowed request
// proceeds with the principal stored in locals and the standard context.
func (g *RouteGuard) RequireAccess(routeID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		policy := g.policies.Lookup(routeID)
		raw := BearerFromHeader(c.Get(fiber.HeaderAuthorization))

		decision := g.engine.Decide(c.UserContext(), policy, raw)
		if !decision.Allowed {
			g.logger.Debug("request denied", "route", routeID, "reason", decision.Reason.String())
			return RespondError(c, decision.Err())
		}

		if decision.Principal != nil {
			c.Locals(g.contextKey, decision.Principal)
			c.SetUserContext(WithClaims(c.UserContext(), decision.Principal))
		}

		return c.Next()
	}
}

// GuardClaims extracts the principal stored by RequireAccess.
func GuardClaims(c *fiber.Ctx, key string) (*Claims, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	claims, ok := c.Locals(key).(*Claims)
	return claims, ok
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// RegisterRequest payload
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Name,
			validation.Required,
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 0),
		),
	)
}

// AuthController exposes the credential flows as JSON endpoints.
type AuthController struct {
	Logger  Logger
	Service *Service
	Routes  AuthControllerRoutes
}

type AuthControllerRoutes struct {
	Login    string
	Register string
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerService(service *Service) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Service = service
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing Service in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the login and registration endpoints.
func RegisterAuthRoutes(app fiber.Router, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Login, controller.LoginPost).Name("auth.login")
	app.Post(controller.Routes.Register, controller.RegisterPost).Name("auth.register")

	return controller
}

// LoginPost handles POST /auth/login.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return RespondValidationError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return RespondValidationError(c, err)
	}

	result, err := a.Service.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		// The submitted credential pair never reaches the log.
		a.Logger.Info("login rejected")
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// RegisterPost handles POST /auth/register.
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return RespondValidationError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return RespondValidationError(c, err)
	}

	profile, err := a.Service.Register(c.UserContext(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// RespondError renders a typed failure as a JSON error response, using the
// rich error's HTTP code when it carries one.
func RespondError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   richErr.Message,
			"text_code": richErr.TextCode,
		},
	})
}

// RespondValidationError renders a payload validation failure as a 400.
func RespondValidationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   err.Error(),
			"text_code": "VALIDATION",
		},
	})
}
