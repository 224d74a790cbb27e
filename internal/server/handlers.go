package server

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/umbracle/ethgo"

	"github.com/stakewarden/stakewarden/internal/api"
	"github.com/stakewarden/stakewarden/internal/vault"
)

func (s *Server) registerHandlers(e *echo.Echo) {
	e.POST("/v1/stakers/:address/records", s.AddRecords)
	e.PUT("/v1/stakers/:address/records/:index", s.EditRecord)
	e.DELETE("/v1/stakers/:address/records", s.DeleteLastRecords)
	e.DELETE("/v1/stakers/:address", s.DeleteAllRecords)
	e.GET("/v1/stakers/:address", s.GetStaker)
	e.POST("/v1/deposit", s.Deposit)
	e.POST("/v1/pause", s.Pause)
	e.POST("/v1/unpause", s.Unpause)
	e.POST("/v1/owner", s.TransferOwnership)
	e.GET("/v1/status", s.Status)
	e.GET("/v1/events", s.Events)
}

// caller reads the identity a mutating call is made as. An absent header
// resolves to the zero address, which never holds the owner capability.
func caller(ctx echo.Context) (ethgo.Address, error) {
	str := ctx.Request().Header.Get(api.CallerHeader)
	if str == "" {
		return ethgo.Address{}, nil
	}
	return api.ParseAddress(str)
}

func errResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, vault.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, vault.ErrInvalidState):
		code = http.StatusConflict
	case errors.Is(err, vault.ErrInvalidArgument), errors.Is(err, vault.ErrIndexOutOfRange):
		code = http.StatusBadRequest
	}
	return ctx.JSON(code, &api.ErrorResponse{Error: err.Error()})
}

func badRequest(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, &api.ErrorResponse{Error: msg})
}

func (s *Server) AddRecords(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	staker, err := api.ParseAddress(ctx.Param("address"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req api.AddRecordsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "malformed request body")
	}

	pubkeys := [][]byte{}
	creds := [][]byte{}
	sigs := [][]byte{}
	roots := [][]byte{}
	for _, record := range req.Records {
		if record == nil {
			return badRequest(ctx, "empty record in batch")
		}
		pubkeys = append(pubkeys, record.Pubkey)
		creds = append(creds, record.WithdrawalCredentials)
		sigs = append(sigs, record.Signature)
		roots = append(roots, record.Root)
	}

	if err := s.vault.AddDepositData(from, staker, pubkeys, creds, sigs, roots); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, &api.AddRecordsResponse{
		Staker:      staker.String(),
		Added:       uint64(len(req.Records)),
		QueueLength: s.vault.GetStakerData(staker).Count(),
	})
}

func (s *Server) EditRecord(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	staker, err := api.ParseAddress(ctx.Param("address"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	index, err := strconv.ParseUint(ctx.Param("index"), 10, 64)
	if err != nil {
		return badRequest(ctx, "malformed record index")
	}

	var req api.EditRecordRequest
	if err := ctx.Bind(&req); err != nil || req.Record == nil {
		return badRequest(ctx, "malformed request body")
	}

	record := &vault.Record{
		Pubkey:                req.Record.Pubkey,
		WithdrawalCredentials: req.Record.WithdrawalCredentials,
		Signature:             req.Record.Signature,
		Root:                  req.Record.Root,
	}
	if err := s.vault.EditDepositData(from, staker, index, record); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, &api.EditRecordResponse{
		Staker: staker.String(),
		Index:  index,
	})
}

func (s *Server) DeleteLastRecords(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	staker, err := api.ParseAddress(ctx.Param("address"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	count, err := strconv.ParseUint(ctx.QueryParam("count"), 10, 64)
	if err != nil {
		return badRequest(ctx, "malformed count")
	}

	if err := s.vault.DeleteLastEntries(from, staker, count); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, &api.DeleteRecordsResponse{
		Staker:      staker.String(),
		Deleted:     count,
		QueueLength: s.vault.GetStakerData(staker).Count(),
	})
}

func (s *Server) DeleteAllRecords(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	staker, err := api.ParseAddress(ctx.Param("address"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	deleted := s.vault.GetStakerData(staker).Count()
	if err := s.vault.DeleteAllEntries(from, staker); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, &api.DeleteRecordsResponse{
		Staker:  staker.String(),
		Deleted: deleted,
	})
}

func (s *Server) GetStaker(ctx echo.Context) error {
	staker, err := api.ParseAddress(ctx.Param("address"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	data := s.vault.GetStakerData(staker)
	resp := &api.StakerResponse{
		Staker:                staker.String(),
		Count:                 data.Count(),
		Pubkeys:               []api.HexBytes{},
		WithdrawalCredentials: []api.HexBytes{},
		Signatures:            []api.HexBytes{},
		Roots:                 []api.HexBytes{},
	}
	for i := uint64(0); i < data.Count(); i++ {
		resp.Pubkeys = append(resp.Pubkeys, data.Pubkeys[i])
		resp.WithdrawalCredentials = append(resp.WithdrawalCredentials, data.WithdrawalCredentials[i])
		resp.Signatures = append(resp.Signatures, data.Signatures[i])
		resp.Roots = append(resp.Roots, data.Roots[i])
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) Deposit(ctx echo.Context) error {
	var req api.DepositRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "malformed request body")
	}
	sender, err := api.ParseAddress(req.From)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	value, ok := new(big.Int).SetString(req.Value, 10)
	if !ok {
		return badRequest(ctx, "malformed deposit value")
	}

	count, err := s.vault.Deposit(sender, value)
	if err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, &api.DepositResponse{
		Sender:  sender.String(),
		Records: count,
		Value:   value.String(),
	})
}

func (s *Server) Pause(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.vault.Pause(from); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, struct{}{})
}

func (s *Server) Unpause(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.vault.Unpause(from); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, struct{}{})
}

func (s *Server) TransferOwnership(ctx echo.Context) error {
	from, err := caller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req api.TransferOwnershipRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "malformed request body")
	}
	newOwner, err := api.ParseAddress(req.NewOwner)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.vault.TransferOwnership(from, newOwner); err != nil {
		return errResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, struct{}{})
}

func (s *Server) Status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &api.StatusResponse{
		Name:       s.config.Name,
		Owner:      s.vault.Owner().String(),
		Paused:     s.vault.Paused(),
		Acceptor:   s.acceptorAddr.String(),
		Stakers:    s.vault.NumStakers(),
		Collateral: ethgo.Ether(s.config.CollateralEth).String(),
	})
}

func (s *Server) Events(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "malformed limit")
		}
		limit = parsed
	}

	out := []*api.EventStub{}
	for _, event := range s.events.recent(limit) {
		out = append(out, &api.EventStub{
			ID:       event.ID,
			Type:     string(event.Type),
			Staker:   event.Staker.String(),
			Count:    event.Count,
			Index:    event.Index,
			Acceptor: event.Acceptor.String(),
			Time:     event.Time.Format(time.RFC3339),
		})
	}
	return ctx.JSON(http.StatusOK, out)
}
