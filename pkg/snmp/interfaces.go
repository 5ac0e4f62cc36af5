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

//go:generate mockgen -destination=mock_snmp.go -package=snmp github.com/Oberon01/it-tools/pkg/snmp Client,ClientFactory

package snmp

import "context"

// Client is a request/response SNMP session with one device. Values come back
// as strings; the collector owns all parsing so malformed device data degrades
// a single field instead of failing a query.
type Client interface {
	Connect() error
	Close() error
	// Get fetches a single value. Returns ErrNoSuchObject when the device does
	// not implement the OID.
	Get(ctx context.Context, oid string) (string, error)
	// GetNext returns the lexicographically next OID and its value. Returns
	// ErrEndOfWalk at the end of the MIB view.
	GetNext(ctx context.Context, oid string) (nextOID, value string, err error)
}

// ClientFactory creates a Client for a device address.
type ClientFactory interface {
	CreateClient(address string) (Client, error)
}
