// Package registry provides an embeddable in-process client for the
// CSV-backed person-registry search engine, without the HTTP layer.
//
//	client, err := registry.New(
//	    registry.WithCSV("data/registrations.csv", "utf-8"),
//	    registry.WithFields(
//	        []string{"name", "surname", "cpf", "city", "state"},
//	        []string{"name", "surname", "city", "state", "phone"},
//	    ),
//	)
//	env := client.Search(ctx, map[string]string{"name": "João"})
//	fmt.Println(env.Count)
//
// Alternatively load everything from a service config file:
//
//	client, err := registry.New(registry.WithConfigFile("config/local.yaml"))
package registry
