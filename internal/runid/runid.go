// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package runid mints short correlation ids for engine runs, so a
// batch job's interleaved log output can be split back out per game.
package runid

import "github.com/google/uuid"

// New returns a fresh correlation id, the first 8 characters of a
// random UUID4 — enough to tell concurrently running jobs apart in a
// combined log stream without the visual noise of a full UUID.
func New() string {
	return uuid.New().String()[:8]
}
