// Command demo walks the whole delegation and presentation flow in one
// process: bootstrap a registry, admit a second authority, grant it the
// credential-minting permission, issue credentials to a subject and verify
// a challenge-bound presentation.
package main

import (
	"auth490/pkg/keys"
	"auth490/pkg/logger"
	"auth490/pkg/payload"
	"auth490/pkg/qr"
	"auth490/pkg/registry"
	"auth490/pkg/verifier"
)

func main() {
	log := logger.NewSimple("demo")

	mainKey, err := keys.Generate()
	if err != nil {
		panic(err)
	}
	mainAuthority := payload.NewAuthority("Auth490", mainKey)
	log.Info("Main authority", "name", mainAuthority.Name(), "valid", mainAuthority.Validate())

	reg, err := registry.New(mainAuthority)
	if err != nil {
		panic(err)
	}

	governmentKey, err := keys.Generate()
	if err != nil {
		panic(err)
	}
	government := payload.NewAuthority("Government of Location", governmentKey)
	log.Info("Government", "name", government.Name(), "valid", government.Validate())

	governmentRequest := payload.NewAuthorityRequest(mainAuthority, government)
	if err := reg.Insert(governmentRequest); err != nil {
		panic(err)
	}
	if err := reg.Insert(payload.NewAuthorityApproval(mainAuthority, governmentRequest)); err != nil {
		panic(err)
	}
	log.Info("Government admitted", "is_authority", reg.IsAuthority(government))

	permissionRequest := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionDataCreation})
	if err := reg.Insert(permissionRequest); err != nil {
		panic(err)
	}
	if err := reg.Insert(payload.NewPermissionApproval(mainAuthority, permissionRequest.Permissions(), permissionRequest)); err != nil {
		panic(err)
	}
	log.Info("Permission granted", "data_creation", reg.HasPermissions(government, payload.PermissionDataCreation))

	subjectKey, err := keys.Generate()
	if err != nil {
		panic(err)
	}
	subject := payload.NewIndividual(subjectKey)

	name := payload.NewData(government, subject, payload.DataTypeName, "JOHN DOE")
	vaccine := payload.NewData(government, subject, payload.DataTypeVaccine, "PFIZER")
	log.Info("Credentials issued", "name_valid", name.Validate(), "vaccine_valid", vaccine.Validate())

	v := verifier.New(reg, government, governmentKey, "CHALLENGE")
	request := v.RequestData(payload.DataTypeName, payload.DataTypeVaccine)
	if !request.Validate() {
		panic("invalid data request")
	}
	log.Info("Data request", "transport", payload.Encode(request))

	transfer := payload.NewDataTransfer(subject, []*payload.Data{name, vaccine}, request.Challenge())
	transport := payload.Encode(transfer)
	log.Info("Transfer", "length", len(transport), "budget", qr.TransportBudget)

	if err := v.ValidateTransfer(transfer); err != nil {
		panic(err)
	}
	log.Info("Presentation verified")
}
