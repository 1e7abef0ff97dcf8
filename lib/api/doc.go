// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the typed client for the storefront HTTP API.
//
// [Client] owns one resty client and the token store. [CustomerClient]
// and [AdminClient] expose the operations each role may call. Every
// operation issues exactly one HTTP request and reports (value, ok):
// transport errors, non-2xx statuses and undecodable bodies all become
// ok == false and are logged at WARN with the operation name, HTTP
// status and request id. Callers above this package never see the
// reason for a failure.
//
// Bearer operations read their token from the store before building the
// request. A missing token fails immediately without touching the
// network.
package api
