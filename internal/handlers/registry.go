package handlers

// AppHandlers bundles every handler the router mounts.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	PropertyHandler    *PropertyHandler
	ContractorHandler  *ContractorHandler
	AppointmentHandler *AppointmentHandler
	FileHandler        *FileHandler
	AdminHandler       *AdminHandler
}
