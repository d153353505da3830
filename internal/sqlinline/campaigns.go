package sqlinline

const QGetCampaign = `--sql 6a3f0b1e-58c4-4f83-9a34-1d2e8b7c5f20
select id, creator, accepted_asset, title, description, image_url, target_amount, deadline, amount_collected
from campaigns
where id = $1::bigint;
`

const QListCampaigns = `--sql b82e4d0c-7a15-49f6-8c3d-5e9f1a2b6c47
select id, creator, accepted_asset, title, description, image_url, target_amount, deadline, amount_collected
from campaigns
order by id;
`

const QUpsertCampaign = `--sql e1c9f3a7-2b64-48d0-95a8-7f3c0d1e4b58
insert into campaigns (id, creator, accepted_asset, title, description, image_url, target_amount, deadline, amount_collected)
values ($1::bigint, $2::text, $3::text, $4::text, $5::text, $6::text, $7::bigint, $8::bigint, $9::bigint)
on conflict (id) do update set
    creator          = excluded.creator,
    accepted_asset   = excluded.accepted_asset,
    title            = excluded.title,
    description      = excluded.description,
    image_url        = excluded.image_url,
    target_amount    = excluded.target_amount,
    deadline         = excluded.deadline,
    amount_collected = excluded.amount_collected;
`

const QClearCampaign = `--sql 2d6b8e5f-91a3-4c07-b4d2-8a0f6c3e1d79
update campaigns
set creator = '', accepted_asset = '', title = '', description = '', image_url = '',
    target_amount = 0, deadline = 0, amount_collected = 0
where id = $1::bigint;
`
