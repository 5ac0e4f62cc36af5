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

// Standard Printer-MIB / Host-Resources-MIB OIDs - defined as constants for
// clarity and maintainability. Any printer that implements RFC 3805 answers
// these regardless of vendor.
const (
	// Identity
	oidDeviceModel  = ".1.3.6.1.2.1.25.3.2.1.3.1"  // hrDeviceDescr.1
	oidSerialNumber = ".1.3.6.1.2.1.43.5.1.1.17.1" // prtGeneralSerialNumber.1

	// prtMarkerSuppliesTable columns, indexed by .<slot> under each prefix
	oidSupplyDescription = ".1.3.6.1.2.1.43.11.1.1.6.1"
	oidSupplyMaxCapacity = ".1.3.6.1.2.1.43.11.1.1.8.1"
	oidSupplyLevel       = ".1.3.6.1.2.1.43.11.1.1.9.1"

	// prtAlertTable columns, walked as parallel sub-trees sharing row suffixes
	oidAlertSeverityLevel = ".1.3.6.1.2.1.43.18.1.1.2"
	oidAlertDescription   = ".1.3.6.1.2.1.43.18.1.1.8"

	// prtMarkerLifeCount.1.1 - lifetime page counter
	oidMarkerLifeCount = ".1.3.6.1.2.1.43.10.2.1.4.1.1"
)

// Supply slot indices probed per device. Slots outside this range exist in
// theory but not on the fleet this tool manages.
const (
	supplySlotMin = 1
	supplySlotMax = 9
)

// supplyLevelUnknown is the prtMarkerSuppliesLevel sentinel for "present but
// level not reportable".
const supplyLevelUnknown = -2
