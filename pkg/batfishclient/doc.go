// Package batfishclient provides the primary entry point for constructing a
// DigitalOcean v2 API client that implements the batfish.Client interface.
//
// It layers configuration, HTTP transport and token loading on top of the
// resource interfaces and types defined in the batfish package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/batfish/pkg/batfish"
//	  "github.com/fivetwenty-io/batfish/pkg/batfishclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With a token you already have:
//	  cli, err := batfishclient.NewWithToken(ctx, "dop_v1_...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with the token saved by 'batfish authorize' in ~/.batfish:
//	  cli, err = batfishclient.NewFromHome(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  droplet, err := cli.Droplets().FromName(ctx, "web")
//	  if err != nil { log.Fatal(err) }
//	  if droplet != nil {
//	    _, err = cli.Droplets().Reboot(ctx, droplet)
//	  }
//	}
//
// # Configuration
//
// batfish.Config controls the endpoint, user agent, timeouts, retries and
// logging. An empty APIEndpoint uses the public API; an endpoint without a
// scheme gets https://.
package batfishclient
