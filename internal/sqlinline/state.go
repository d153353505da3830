package sqlinline

const QGetCampaignCount = `--sql 58d2e7b4-0c91-4f36-8a5d-6b1f3c9e2a70
select campaign_count from ledger_state where id;
`

const QSetCampaignCount = `--sql c4f8a2d6-3e15-4b79-90c8-2d5e7f1a4b63
update ledger_state set campaign_count = $1::bigint where id;
`

const QGetChangeFee = `--sql 1e7b3d9f-85a2-4c60-b3e7-9f0a4c6d8e21
select change_fee from ledger_state where id;
`

const QSetChangeFee = `--sql a9c5e1f3-7d28-4b64-8f0a-3c6e9d2b5f17
update ledger_state set change_fee = $1::bigint where id;
`

const QGetFeeRecipient = `--sql 6f2d8a4c-1b95-4e37-a8c2-5d0f7e3b9a46
select fee_recipient from ledger_state where id;
`

const QSetFeeRecipient = `--sql d3b7f5a1-9e42-4c86-b1d9-7a2c4f6e0b58
update ledger_state set fee_recipient = $1::text where id;
`
