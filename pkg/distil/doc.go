// Package distil defines the public surface of the Distil rating API client:
// configuration, the Client interface and its per-resource managers, the
// generic Resource wrapper, query parameter encoding, the error taxonomy and
// the token cache abstraction.
//
// Construct clients with github.com/catalyst-cloud/distil-go/pkg/distilclient:
//
//	client, err := distilclient.New(ctx, &distil.Config{
//		Username:    "alice",
//		Password:    "secret",
//		ProjectName: "billing-demo",
//		AuthURL:     "https://keystone.example.com:5000",
//		RegionName:  "nz-hlz-1",
//	})
//	if err != nil {
//		return err
//	}
//
//	products, err := client.Products().List(ctx, &distil.ProductListOptions{
//		Regions: []string{"nz-hlz-1"},
//	})
package distil
