// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package stdlib holds the prelude of standard definitions.
package stdlib

import _ "embed"

//go:embed prelude.ski
var Prelude string
