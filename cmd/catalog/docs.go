package main

// @title Product Catalog API
// @version 1.0
// @description CRUD product catalog with search, filter, sort, pagination and aggregations

// @host localhost:8080
// @BasePath /
