// Package restorm maps plain Go objects onto RESTful resources.
//
// A class (a Go type, or any object implementing core.Classifier) is declared once with
// its resource name and identifier field. From then on the request factory turns objects
// into HTTP requests, and a repository sends them:
//
//   - an object without identifier is created with POST {base}/{resource};
//   - an object with an identifier is updated with PUT {base}/{resource}/{id};
//   - finds are GET requests, removals DELETE requests.
//
// The create/update decision looks only at the identifier. Objects whose identifier is
// assigned by the client before their first save are always sent as updates; creating
// such resources is the caller's responsibility.
//
// Usage:
//
//	client, err := restorm.New(
//		restorm.WithBaseURL("https://api.example.com"),
//		restorm.WithMetadataSource(src),
//	)
//
//	blogs := restorm.NewRepository[Blog](client)
//	saved, err := blogs.Save(ctx, &Blog{Title: "Hello"})
package restorm
