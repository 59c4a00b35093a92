// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package borrowersrs realizes the borrowers resource.
package borrowersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/momeni/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/libweb/pkg/core/model"
	"github.com/momeni/libweb/pkg/core/usecase/borrowersuc"
)

type resource struct {
	borrowers *borrowersuc.UseCase
}

// Register adapts the borrowers use case with the POST /borrowers API
// which registers a borrower.
func Register(r *gin.RouterGroup, borrowers *borrowersuc.UseCase) {
	rs := &resource{borrowers: borrowers}
	r.POST("borrowers", rs.RegisterBorrower)
}

type registerBorrowerReq struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
}

func (rs *resource) RegisterBorrower(c *gin.Context) {
	req := &registerBorrowerReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b, err := rs.borrowers.Register(c, &model.Borrower{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
