/*
 * Copyright 2025 Oberon01.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package snmp

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/models"
)

const (
	defaultPort      = 161
	defaultCommunity = "public"
	defaultTimeout   = 2 * time.Second
	defaultRetries   = 1
)

// ClientConfig carries the SNMP session settings shared by all devices.
type ClientConfig struct {
	Port      uint16          `json:"port"`
	Community string          `json:"community"`
	Timeout   models.Duration `json:"timeout"`
	Retries   int             `json:"retries"`
}

func (c *ClientConfig) withDefaults() ClientConfig {
	out := *c

	if out.Port == 0 {
		out.Port = defaultPort
	}

	if out.Community == "" {
		out.Community = defaultCommunity
	}

	if out.Timeout <= 0 {
		out.Timeout = models.Duration(defaultTimeout)
	}

	if out.Retries <= 0 {
		out.Retries = defaultRetries
	}

	return out
}

// GoSNMPFactory creates gosnmp-backed clients with a shared session config.
type GoSNMPFactory struct {
	config ClientConfig
	logger logger.Logger
}

// NewFactory creates a ClientFactory for the given session settings.
func NewFactory(config ClientConfig, log logger.Logger) *GoSNMPFactory {
	return &GoSNMPFactory{
		config: config.withDefaults(),
		logger: log,
	}
}

// CreateClient implements ClientFactory.
func (f *GoSNMPFactory) CreateClient(address string) (Client, error) {
	conn := &gosnmp.GoSNMP{
		Target:    address,
		Port:      f.config.Port,
		Community: f.config.Community,
		Version:   gosnmp.Version2c,
		Timeout:   time.Duration(f.config.Timeout),
		Retries:   f.config.Retries,
		Transport: "udp",
		MaxOids:   gosnmp.MaxOids,
	}

	return &gosnmpClient{conn: conn, logger: f.logger}, nil
}

type gosnmpClient struct {
	conn   *gosnmp.GoSNMP
	logger logger.Logger
}

func (g *gosnmpClient) Connect() error {
	if err := g.conn.Connect(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnreachable, err)
	}

	return nil
}

func (g *gosnmpClient) Close() error {
	if g.conn.Conn == nil {
		return nil
	}

	return g.conn.Conn.Close()
}

// Get fetches one value. gosnmp has no context plumbing of its own, so the
// context is checked before the request; the per-request bound is the session
// timeout times retries.
func (g *gosnmpClient) Get(ctx context.Context, oid string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result, err := g.conn.Get([]string{oid})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	if result.Error != gosnmp.NoError {
		return "", fmt.Errorf("%w: %s", errSNMPStatus, result.Error)
	}

	if len(result.Variables) == 0 {
		return "", errEmptyResponse
	}

	return pduValue(result.Variables[0])
}

func (g *gosnmpClient) GetNext(ctx context.Context, oid string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	result, err := g.conn.GetNext([]string{oid})
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	if result.Error != gosnmp.NoError {
		return "", "", fmt.Errorf("%w: %s", errSNMPStatus, result.Error)
	}

	if len(result.Variables) == 0 {
		return "", "", errEmptyResponse
	}

	pdu := result.Variables[0]

	if pdu.Type == gosnmp.EndOfMibView || pdu.Type == gosnmp.EndOfContents {
		return "", "", ErrEndOfWalk
	}

	value, err := pduValue(pdu)
	if err != nil {
		return "", "", err
	}

	return pdu.Name, value, nil
}

// pduValue renders a PDU value as a string. Numeric parsing happens in the
// collector so one malformed value degrades one reading only.
func pduValue(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return "", fmt.Errorf("%w: %s", ErrNoSuchObject, pdu.Name)
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return string(b), nil
		}

		return fmt.Sprintf("%v", pdu.Value), nil
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Counter64, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Uinteger32:
		return gosnmp.ToBigInt(pdu.Value).String(), nil
	case gosnmp.ObjectIdentifier, gosnmp.IPAddress:
		if s, ok := pdu.Value.(string); ok {
			return s, nil
		}

		return fmt.Sprintf("%v", pdu.Value), nil
	default:
		return fmt.Sprintf("%v", pdu.Value), nil
	}
}
