// Package zabbix implements a JSON-RPC 2.0 client for the Zabbix API,
// covering the subset of methods that screen management needs.
//
// # Protocol
//
// Every call is an HTTP POST of a JSON-RPC envelope to /api_jsonrpc.php
// with Content-Type application/json-rpc. Authenticated methods carry the
// session token in the envelope's auth field; apiinfo.version and
// user.login reject that field and are sent without it. The API returns
// numeric fields as strings ("hsize":"3"), which the result types decode
// back into ints.
//
// # Sessions
//
//	client := zabbix.NewClient("https://zabbix.example.com")
//	if err := client.Login("Admin", password); err != nil {
//		return err
//	}
//	defer client.Logout()
//
// A session token obtained elsewhere can be installed with SetToken
// instead of logging in.
//
// # Errors
//
// Server-side failures come back as *APIError with the failing method
// name attached. Transport and decoding failures are plain wrapped
// errors. Callers that need to distinguish remote API rejections can
// type-assert or errors.As against *APIError.
package zabbix
