package domain

import "strings"

// FoodCategory is the closed set of food categories used for matching and decay.
type FoodCategory string

const (
	CategoryProduce  FoodCategory = "produce"
	CategoryBakery   FoodCategory = "bakery"
	CategoryPrepared FoodCategory = "prepared"
	CategoryPackaged FoodCategory = "packaged"
	CategoryFrozen   FoodCategory = "frozen"
	CategoryDairy    FoodCategory = "dairy"
)

// FoodCategories lists every category in declaration order.
var FoodCategories = []FoodCategory{
	CategoryProduce,
	CategoryBakery,
	CategoryPrepared,
	CategoryPackaged,
	CategoryFrozen,
	CategoryDairy,
}

// ParseFoodCategory accepts a category name case-insensitively.
func ParseFoodCategory(s string) (FoodCategory, bool) {
	c := FoodCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FoodCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type StorageRequirement string

const (
	StorageHot         StorageRequirement = "hot"
	StorageCold        StorageRequirement = "cold"
	StorageFrozen      StorageRequirement = "frozen"
	StorageShelfStable StorageRequirement = "shelf_stable"
)

func ParseStorageRequirement(s string) (StorageRequirement, bool) {
	switch r := StorageRequirement(strings.ToLower(strings.TrimSpace(s))); r {
	case StorageHot, StorageCold, StorageFrozen, StorageShelfStable:
		return r, true
	}
	return "", false
}
