// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a gatewaysd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {
	conn, err := net.DialTimeout("tcp", connect, dialTimeout)
	if nil != err {
		return nil, err
	}
	return newClient(conn, verbose, handle), nil
}

func newClient(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
}

// Close - shutdown the gatewaysd connection
func (client *Client) Close() {
	client.client.Close()
}

func (client *Client) call(method string, arguments interface{}, reply interface{}) error {
	if client.verbose {
		client.printJson(method+" request", arguments)
	}
	if err := client.client.Call(method, arguments, reply); nil != err {
		return err
	}
	if client.verbose {
		client.printJson(method+" reply", reply)
	}
	return nil
}

func (client *Client) printJson(title string, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(client.handle, "%s: marshal error: %s\n", title, err)
		return
	}
	fmt.Fprintf(client.handle, "%s:\n%s\n", title, b)
}
