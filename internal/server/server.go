package server

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/wallet"

	"github.com/stakewarden/stakewarden/internal/api"
	"github.com/stakewarden/stakewarden/internal/audit"
	"github.com/stakewarden/stakewarden/internal/deposit"
	"github.com/stakewarden/stakewarden/internal/vault"
)

// Server hosts the vault and serves its operations over a json http api
type Server struct {
	logger hclog.Logger
	config *Config

	vault        *vault.Vault
	acceptorAddr ethgo.Address
	events       *eventBuffer
	audit        *audit.Store
	http         *echo.Echo
}

func NewServer(logger hclog.Logger, config *Config) (*Server, error) {
	owner, err := api.ParseAddress(config.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "invalid owner address")
	}
	if owner == (ethgo.Address{}) {
		return nil, errors.New("the owner cannot be the zero address")
	}

	srv := &Server{
		logger: logger,
		config: config,
		events: newEventBuffer(config.EventBuffer),
	}

	acceptor, err := srv.setupAcceptor()
	if err != nil {
		return nil, err
	}
	srv.acceptorAddr = acceptor.Address()

	sinks := []vault.EventSink{srv.events}
	if config.DatabaseURL != "" {
		store, err := audit.NewStore(context.Background(), logger, config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		srv.audit = store
		sinks = append(sinks, store)
		logger.Info("audit sink enabled")
	}

	vaultConfig := vault.DefaultConfig()
	vaultConfig.Owner = owner
	vaultConfig.Collateral = ethgo.Ether(config.CollateralEth)
	vaultConfig.MaxAddBatch = config.MaxAddBatch
	vaultConfig.DepositLimit = config.DepositLimit

	v, err := vault.NewVault(logger, vaultConfig, acceptor, sinks...)
	if err != nil {
		return nil, err
	}
	srv.vault = v

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	srv.registerHandlers(e)
	srv.http = e

	logger.Info("server started", "addr", config.BindAddr, "owner", owner.String())
	return srv, nil
}

func (s *Server) setupAcceptor() (vault.Acceptor, error) {
	if s.config.Eth1Addr == "" {
		s.logger.Info("no eth1 endpoint configured, using the dev acceptor")
		return newDevAcceptor(s.logger), nil
	}

	depositAddr, err := api.ParseAddress(s.config.DepositContract)
	if err != nil {
		return nil, errors.Wrap(err, "invalid deposit contract address")
	}

	priv, err := hex.DecodeString(strings.TrimPrefix(s.config.FundingKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid funding key")
	}
	key, err := wallet.NewWalletFromPrivKey(priv)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the funding key")
	}

	return deposit.NewChainAcceptor(s.logger, s.config.Eth1Addr, depositAddr, key)
}

// Start serves the api until Stop is called
func (s *Server) Start() error {
	return s.http.Start(s.config.BindAddr)
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down the api", "err", err)
	}
	if s.audit != nil {
		s.audit.Close()
	}
}
