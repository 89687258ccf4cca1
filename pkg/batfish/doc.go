// Package batfish provides types, interfaces, and helpers for working with the
// DigitalOcean v2 API (droplets, images, regions, sizes and actions).
//
// # Overview
//
// The batfish package defines the resource models (Droplet, Image, Region,
// Size, Action) and the interfaces for resource-oriented clients (DropletsClient,
// ImagesClient, RegionsClient, SizesClient, ActionsClient). A concrete
// implementation is provided by the batfishclient package, which wires
// configuration, transport and the stored token. Most consumers should import
// batfishclient to construct a client and then use the interfaces exposed here.
//
// Getting a client
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
//	  cli, err := batfishclient.New(ctx, &batfish.Config{AccessToken: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  droplets, err := cli.Droplets().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = droplets
//	}
//
// # Resolving identifiers
//
// Every resource can be looked up by its canonical identifier (FromID) or by a
// case-insensitive name prefix (FromName). Images can also be looked up by
// slug. Lookups that find nothing return a nil model and a nil error; only
// transport failures, HTTP error statuses other than 404 and malformed bodies
// are reported as errors.
//
// Operations that act on a droplet or an image accept a DropletRef or an
// ImageRef. Both ID and the resolved model satisfy the ref, so callers can pass
// whichever they have:
//
//	_, err = cli.Droplets().Reboot(ctx, batfish.ID(1234))
//	_, err = cli.Droplets().Reboot(ctx, droplet)
//
// # Actions
//
// State-changing operations are expressed with ActionType, a closed set of
// action names. Requests are validated before anything is sent: unsupported
// action types, names outside [A-Za-z0-9.-] and missing companion arguments
// (an image for restore and rebuild, a name for rename and snapshot) are
// returned as *ValidationError.
//
// # Errors
//
// HTTP error statuses are returned as *HTTPError. Helpers such as IsNotFound,
// IsUnauthorized and IsServerError branch on the common cases.
package batfish
