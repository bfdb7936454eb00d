// @title           Identity Service API
// @version         1.0
// @description     Credential storage, token issuance and role-based access for the 99minutos platform.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/99minutos/identity-service/cmd"

func main() {
	cmd.Execute()
}
