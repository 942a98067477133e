// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities stay free of GORM tags and infrastructure concerns
// 2. Persistence models carry all GORM annotations and table mappings
// 3. ToDomain/FromDomain mappers convert between the two
// 4. Repositories only ever touch persistence models
package models
