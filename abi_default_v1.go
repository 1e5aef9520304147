// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build gpio_uapi_v1

package gpioline

// The ABI version used by chips unless overridden with WithABIVersion.
const defaultABIVersion = 1
