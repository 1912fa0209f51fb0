package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/server"
)

// resolveAddr picks the server address: the --server flag when given,
// otherwise the configured listen address.
func resolveAddr() string {
	if serverAddr != "" {
		return serverAddr
	}
	cfg, err := config.Load(configFile())
	if err != nil {
		return "localhost:12600"
	}
	return cfg.Server.Listen
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// rpcCall sends one JSON-RPC request to a running dashboard.
func rpcCall(method string, params interface{}) (json.RawMessage, error) {
	addr := resolveAddr()
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	req := server.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      1,
	}
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		req.Params = data
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post("http://"+addr+"/rpc", "application/json", bytes.NewBuffer(body))
	if err != nil {
		if strings.Contains(err.Error(), "connection refused") {
			return nil, fmt.Errorf("dashboard is not running on %s (start it with 'inkdash run')", addr)
		}
		return nil, err
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int         `json:"code"`
			Message string      `json:"message"`
			Data    interface{} `json:"data"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("%s: %v", rpcResp.Error.Message, rpcResp.Error.Data)
	}
	return rpcResp.Result, nil
}

// printRPCResult pretty-prints a JSON-RPC result payload.
func printRPCResult(result json.RawMessage) {
	var v interface{}
	if err := json.Unmarshal(result, &v); err != nil {
		fmt.Println(string(result))
		return
	}
	printJson(v)
}
