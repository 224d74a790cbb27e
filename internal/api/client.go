package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
)

// CallerHeader carries the identity a mutating call is made as. The access
// gate on the server compares it with the vault owner.
const CallerHeader = "X-Caller"

// Client is an http client for the stakewarden api
type Client struct {
	addr   string
	caller string
}

// NewClient creates a new api client. caller is the identity set on
// mutating calls, it may be empty for read-only use.
func NewClient(addr string, caller string) *Client {
	return &Client{addr: addr, caller: caller}
}

func (c *Client) do(method, url string, objReq interface{}, objResp interface{}) error {
	var body bytes.Buffer
	if objReq != nil {
		if err := json.NewEncoder(&body).Encode(objReq); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.addr+url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.caller != "" {
		req.Header.Set(CallerHeader, c.caller)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if objResp != nil {
		if err := json.Unmarshal(data, objResp); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) AddRecords(staker string, req *AddRecordsRequest) (*AddRecordsResponse, error) {
	var out *AddRecordsResponse
	err := c.do(http.MethodPost, fmt.Sprintf("/v1/stakers/%s/records", staker), req, &out)
	return out, err
}

func (c *Client) EditRecord(staker string, index uint64, req *EditRecordRequest) (*EditRecordResponse, error) {
	var out *EditRecordResponse
	err := c.do(http.MethodPut, fmt.Sprintf("/v1/stakers/%s/records/%d", staker, index), req, &out)
	return out, err
}

func (c *Client) DeleteLastRecords(staker string, count uint64) (*DeleteRecordsResponse, error) {
	var out *DeleteRecordsResponse
	err := c.do(http.MethodDelete, fmt.Sprintf("/v1/stakers/%s/records?count=%d", staker, count), nil, &out)
	return out, err
}

func (c *Client) DeleteAllRecords(staker string) (*DeleteRecordsResponse, error) {
	var out *DeleteRecordsResponse
	err := c.do(http.MethodDelete, fmt.Sprintf("/v1/stakers/%s", staker), nil, &out)
	return out, err
}

func (c *Client) Staker(staker string) (*StakerResponse, error) {
	var out *StakerResponse
	err := c.do(http.MethodGet, fmt.Sprintf("/v1/stakers/%s", staker), nil, &out)
	return out, err
}

func (c *Client) Deposit(req *DepositRequest) (*DepositResponse, error) {
	var out *DepositResponse
	err := c.do(http.MethodPost, "/v1/deposit", req, &out)
	return out, err
}

func (c *Client) Pause() error {
	return c.do(http.MethodPost, "/v1/pause", nil, nil)
}

func (c *Client) Unpause() error {
	return c.do(http.MethodPost, "/v1/unpause", nil, nil)
}

func (c *Client) TransferOwnership(req *TransferOwnershipRequest) error {
	return c.do(http.MethodPost, "/v1/owner", req, nil)
}

func (c *Client) Status() (*StatusResponse, error) {
	var out *StatusResponse
	err := c.do(http.MethodGet, "/v1/status", nil, &out)
	return out, err
}

func (c *Client) Events(limit int) ([]*EventStub, error) {
	var out []*EventStub
	err := c.do(http.MethodGet, fmt.Sprintf("/v1/events?limit=%d", limit), nil, &out)
	return out, err
}
