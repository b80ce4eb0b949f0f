package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
)

type dashboardAccount struct {
	Account    accountdomain.Account `json:"account"`
	TotalIn    int64                 `json:"total_in"`
	TotalOut   int64                 `json:"total_out"`
	EntryCount int64                 `json:"entry_count"`
}

type dashboardSummary struct {
	Accounts     []dashboardAccount `json:"accounts"`
	TotalBalance int64              `json:"total_balance"`
	TotalIn      int64              `json:"total_in"`
	TotalOut     int64              `json:"total_out"`
}

func (s *Server) GetDashboardSummary(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := s.accountSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	activity, err := s.ledgerSvc.ActivityByAccount(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	byAccount := make(map[snowflake.ID]ledgerdomain.AccountActivity, len(activity))
	for _, row := range activity {
		byAccount[row.AccountID] = row
	}

	summary := dashboardSummary{
		Accounts: make([]dashboardAccount, 0, len(accounts)),
	}
	for _, account := range accounts {
		row := byAccount[account.ID]
		summary.Accounts = append(summary.Accounts, dashboardAccount{
			Account:    account,
			TotalIn:    row.TotalIn,
			TotalOut:   row.TotalOut,
			EntryCount: row.EntryCount,
		})
		summary.TotalBalance += account.Balance
		summary.TotalIn += row.TotalIn
		summary.TotalOut += row.TotalOut
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}
