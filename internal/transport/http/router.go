package http

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultBodyLimit = "10M"

type RouterConfig struct {
	AllowOrigins []string
	// TrustedProxies are CIDRs or bare addresses allowed to set
	// X-Forwarded-For. Without any, the socket peer identifies the client.
	TrustedProxies []string
	// BodyLimit uses echo's size notation, e.g. "10M".
	BodyLimit      string
	APIRateLimit   int
	APIRateWindow  time.Duration
	DisableMetrics bool
}

func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = ipExtractor(cfg.TrustedProxies)

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range allowOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	e.Use(middleware.BodyLimit(bodyLimit))
	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: allowCredentials,
	}))
	if !cfg.DisableMetrics {
		e.Use(metricsMiddleware())
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	e.Use(apiRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	return e
}

// ipExtractor decides what c.RealIP() returns, which keys the rate limiters
// and the request log.
func ipExtractor(trusted []string) echo.IPExtractor {
	var ranges []echo.TrustOption
	for _, entry := range trusted {
		ipNet, err := parseTrustedProxy(entry)
		if err != nil {
			log.Printf("router: ignoring trusted proxy %q: %v", entry, err)
			continue
		}
		ranges = append(ranges, echo.TrustIPRange(ipNet))
	}
	if len(ranges) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := append([]echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}, ranges...)
	return echo.ExtractIPFromXFFHeader(opts...)
}

func parseTrustedProxy(entry string) (*net.IPNet, error) {
	if strings.Contains(entry, "/") {
		_, ipNet, err := net.ParseCIDR(entry)
		return ipNet, err
	}
	ip := net.ParseIP(entry)
	if ip == nil {
		return nil, &net.ParseError{Type: "IP address", Text: entry}
	}
	bits := 128
	if ip4 := ip.To4(); ip4 != nil {
		ip, bits = ip4, 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
