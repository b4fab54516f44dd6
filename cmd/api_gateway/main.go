package main

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/ridloal/go-shop-server/internal/platform/config"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
)

func newSingleHostReverseProxy(targetHost string) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(targetHost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target URL '%s': %w", targetHost, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)

	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		logger.Error(fmt.Sprintf("Gateway: proxy error for %s %s to %s", req.Method, req.URL.Path, targetURL), err, nil)
		http.Error(rw, "Service unavailable or proxy error", http.StatusBadGateway)
	}
	return proxy, nil
}

func main() {
	cfg := config.LoadGatewayConfig()
	logger.Info("Starting API Gateway on port " + cfg.ListenPort)

	mux := http.NewServeMux()

	// Semua rute API diteruskan ke shop service; path diteruskan apa adanya.
	// Entri tanpa trailing slash dibutuhkan untuk exact match (/products),
	// entri dengan trailing slash untuk semua subpath (/products/42).
	apiPrefixes := []string{
		"/products", "/products/",
		"/categories", "/categories/",
		"/orders", "/orders/",
		"/healthz",
	}

	proxy, err := newSingleHostReverseProxy(cfg.ShopServiceURL)
	if err != nil {
		logger.Error("Failed to create reverse proxy for shop service", err, nil)
		return
	}
	for _, prefix := range apiPrefixes {
		mux.Handle(prefix, proxy)
		logger.Info(fmt.Sprintf("Routing %s to %s", prefix, cfg.ShopServiceURL))
	}

	// Gambar produk dilayani statis dengan prefix tetap /images/
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))
	logger.Info("Serving product images from " + cfg.ImagesDir + " at /images/")

	server := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: mux,
	}

	logger.Info(fmt.Sprintf("API Gateway successfully configured and listening on :%s", cfg.ListenPort))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API Gateway failed to start or crashed", err, nil)
	}
}
