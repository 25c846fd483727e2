package main

import "github.com/adanyl0v/go-todo-api/internal/app"

func main() {
	a := app.New()
	a.MustReadConfig()
	a.MustInitApplicationLogger()

	a.MustInitTracing()
	defer a.ShutdownTracing()

	a.MustConnectStorage()
	defer a.DisconnectStorage()

	a.MustListenAndServeHTTP()
}
