package main

// @title           Gestor PME API
// @version         1.0
// @description     API de gestão para pequenas e médias empresas: clientes, estoque, vendas e financeiro

// @contact.name   Suporte
// @contact.email  suporte@gestorpme.com.br

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
