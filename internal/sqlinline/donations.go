package sqlinline

const QAppendDonation = `--sql 8c41d2aa-5f07-49be-a1c6-02c4f59d7e88
insert into donations (campaign_id, seq, donor, net_amount)
values ($1::bigint, $2::bigint, $3::text, $4::bigint);
`

const QListDonations = `--sql 7a08e4f6-cb8a-42c4-bd7f-291d6e913edc
select campaign_id, seq, donor, net_amount
from donations
where campaign_id = $1::bigint
order by seq;
`

const QCountDonations = `--sql 3c5a1f8d-64e2-4b90-a7c3-0d9e2f6b8a15
select count(*)
from donations
where campaign_id = $1::bigint;
`
