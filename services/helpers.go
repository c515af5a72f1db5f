package services

import (
	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/storage"
)

func populateHouseCrestURL(house *models.House, uploader storage.FileUploader) {
	if house != nil && house.CrestKey != nil && *house.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*house.CrestKey)
		if url != "" {
			house.CrestURL = &url
		}
	}
}
