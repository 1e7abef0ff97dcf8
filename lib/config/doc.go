// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the netrunner
// client binaries.
//
// Configuration is layered, lowest precedence first:
//
//   - built-in defaults ([Default])
//   - a single file named by --config or NETRUNNER_CONFIG, YAML or
//     (by .jsonc extension) JSON with comments
//   - the environment section of that file matching its "environment"
//   - NETRUNNER_API_URL, NETRUNNER_TOKEN_FILE, NETRUNNER_LOG_LEVEL and
//     NETRUNNER_ENVIRONMENT, which may also come from a .env file in
//     the working directory
//
// Unlike server deployments there is no required config file: a client
// with no file talks to the public storefront API with the token file
// in the user's config directory.
package config
