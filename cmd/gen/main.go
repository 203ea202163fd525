package main

import (
	"commune/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.ResidentModel{},
		model.HouseholdModel{},
		model.HouseholdMemberModel{},
		model.JoinRequestModel{},
		model.ResidencyEventModel{},
		model.NotificationModel{},
		model.FeeItemModel{},
		model.FeeReceiptModel{},
		model.FeedbackModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
