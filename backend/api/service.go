// Package api serves sequence generation, c_init computation, candidate
// search and identifiability reports over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/ReneKroon/ttlcache"
	"github.com/fernandosanchezjr/goscrambler/backend/certs"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/config"
	"github.com/fernandosanchezjr/goscrambler/recovery"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	ReloadDebounce  = time.Second
	ShutdownTimeout = 10 * time.Second
	CertName        = "https"
)

type Service struct {
	cfg       *config.Config
	store     cache.Store
	lock      sync.RWMutex
	engine    *recovery.Engine
	sequences *ttlcache.Cache
	watcher   *utils.FileWatcher
	server    *http.Server
	listener  net.Listener
}

func NewService(cfg *config.Config, store cache.Store) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		engine:    recovery.NewEngine(nil, cfg.Workers),
		sequences: ttlcache.NewCache(),
	}
}

func (s *Service) Engine() *recovery.Engine {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.engine
}

// Reload replaces the engine with the cache currently in the store. The
// previous engine keeps serving when loading fails.
func (s *Service) Reload() error {
	startTime := time.Now()
	sc, err := s.store.Load(s.cfg.Cache.Bits)
	if err != nil {
		return err
	}
	if sc.Slot != s.cfg.Slot {
		return fmt.Errorf("%w: cached for slot %+v", cache.CacheMismatch, sc.Slot)
	}
	engine := recovery.NewEngine(sc, s.cfg.Workers)
	s.lock.Lock()
	s.engine = engine
	s.lock.Unlock()
	log.WithFields(log.Fields{
		"path":        s.store.Path(),
		"bits":        sc.Bits,
		"size":        sc.Size(),
		"elapsedTime": time.Since(startTime),
	}).Info("Seed cache loaded")
	return nil
}

func (s *Service) reloadOnChange() {
	if err := s.Reload(); err != nil {
		log.WithError(err).Warn("Seed cache reload failed")
	}
}

func (s *Service) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/sequence/:cinit", s.GetSequence)
	router.GET("/cinit/:id", s.GetCInit)
	router.GET("/candidates/:bits", s.GetCandidates)
	router.GET("/report", s.GetReport)
	return router
}

func (s *Service) Start() error {
	if s.server != nil {
		return nil
	}
	if err := s.Reload(); errors.Is(err, cache.CacheNotFound) {
		log.WithField("path", s.store.Path()).Warn("No seed cache yet, candidate search unavailable")
	} else if err != nil {
		log.WithError(err).Warn("Seed cache not loaded")
	}
	var certPath, keyPath string
	var err error
	if s.cfg.Server.TLS {
		if certPath, keyPath, err = certs.GetCert(CertName); err != nil {
			return err
		}
	}
	listener, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return err
	}
	if s.watcher, err = utils.NewFileWatcher(s.store.Path(), ReloadDebounce, s.reloadOnChange); err != nil {
		log.WithError(err).Warn("Seed cache changes will not be reloaded")
	}
	s.listener = listener
	s.server = &http.Server{Handler: s.Handler()}
	go serve(s.server, listener, certPath, keyPath)
	log.WithFields(log.Fields{
		"address": listener.Addr(),
		"tls":     s.cfg.Server.TLS,
	}).Info("HTTP server started")
	return nil
}

func serve(server *http.Server, listener net.Listener, certPath, keyPath string) {
	var err error
	if certPath != "" {
		err = server.ServeTLS(listener, certPath, keyPath)
	} else {
		err = server.Serve(listener)
	}
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("HTTP server")
	}
}

func (s *Service) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if s.watcher != nil {
		if werr := s.watcher.Close(); err == nil {
			err = werr
		}
	}
	s.sequences.Close()
	s.sequences = ttlcache.NewCache()
	s.server = nil
	s.listener = nil
	s.watcher = nil
	return err
}
